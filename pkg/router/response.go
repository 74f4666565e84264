package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/craftloop/backend/pkg/errorx"
	"github.com/mitchellh/mapstructure"
)

var errBadBinding = errorx.New(errorx.BadRequest, "Cannot read the request")

type response struct {
	Code  int    `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// bind decodes a GET request from its query string and any other request
// from its JSON body.
func bind[Request any](req *http.Request) (*Request, error) {
	body := new(Request)

	if req.Method == http.MethodGet {
		values := map[string]any{}
		for key := range req.URL.Query() {
			values[key] = req.URL.Query().Get(key)
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           body,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}

		if err := decoder.Decode(values); err != nil {
			return nil, err
		}

		return body, nil
	}

	if req.Body == nil {
		return body, nil
	}

	if err := json.NewDecoder(req.Body).Decode(body); err != nil {
		return nil, err
	}

	return body, nil
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{Data: data}); err != nil {
		http.Error(w, "cannot encode the response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response{
		Code:  int(errx.Code),
		Error: errx.Message,
	}); err != nil {
		http.Error(w, "cannot encode the response", http.StatusInternalServerError)
	}
}
