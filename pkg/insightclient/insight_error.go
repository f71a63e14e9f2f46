package insightclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrInsightAPI = errors.New("insight api")

// ErrorResponse is the JSON body the server sends with a failed request.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("(HTTP Status: %d)- %s", e.StatusCode, e.Message)
}

// ToErrorFromResponse turns a non 2xx response into an error that matches both
// ErrInsightAPI and *ErrorResponse.
func ToErrorFromResponse(resp *resty.Response) error {
	errorResponse := &ErrorResponse{StatusCode: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), errorResponse); err != nil || errorResponse.Message == "" {
		errorResponse.Message = resp.Status()
	}

	return errors.Join(ErrInsightAPI, errorResponse)
}
