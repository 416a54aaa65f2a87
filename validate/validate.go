package validate

import (
	"errors"
	"strconv"

	"github.com/cursoshub/elearning/api/weberr"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
)

var validate *validator.Validate

var translator ut.Translator

func init() {

	validate = validator.New()

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)
}

// Check validates the struct tags of val. The returned error carries
// the first violation as its message and every violation as logging
// fields.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {

		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		if len(verrors) < 1 {
			return nil
		}

		fields := make(map[string]interface{}, len(verrors))
		for _, ve := range verrors {
			fields[ve.Field()] = ve.Translate(translator)
		}

		err := errors.New(verrors[0].Translate(translator))
		return weberr.Wrap(err, weberr.WithFields(fields))
	}

	return nil
}

// GeneratePaymentID returns an opaque id for simulated payments.
func GeneratePaymentID() string {
	return uuid.NewString()
}

// CheckIntID parses a positive integer identifier from a path or
// body parameter.
func CheckIntID(id string) (int, error) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 {
		return 0, errors.New("ID is not in its proper form")
	}
	return n, nil
}
