package statistic

import "fmt"

func redisKeyPointLeaderboard(period Period) string {
	return fmt.Sprintf("leaderboard:points:%s", period.Value())
}
