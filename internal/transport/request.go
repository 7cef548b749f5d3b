package transport

import (
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/partnermap/pkg/errors"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// ReadResponse reads and closes the response body. A status outside the
// 2xx range yields an *errors.APIError holding the start of the body.
func ReadResponse(resp *http.Response, dataset, endpoint string) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapAPI(dataset, endpoint, errors.WrapIO("read", "response body", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &errors.APIError{
			Dataset:    dataset,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Endpoint:   endpoint,
		}
	}

	return body, nil
}
