package req

import (
	"fmt"
	"io"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"lead_relay/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

// ReadLimited decodes at most limit bytes of JSON body into dest. Bodies over
// the limit are rejected without decoding. All failures are invalid argument
// errors.
func ReadLimited(r *http.Request, limit int64, dest any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("io.ReadAll: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Unreadable body"),
		)
	}

	if int64(len(body)) > limit {
		return failure.NewInvalidArgumentError(
			fmt.Sprintf("body exceeds %d bytes", limit),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Body too large"),
		)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Unmarshal: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(err.Error()),
		)
	}

	return nil
}
