package validation

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
)

// Validation rule patterns
var (
	// Usernames follow the usual letters, digits and @.+-_ set
	UsernamePattern = `^[\w.@+\-]+$`

	// Phone numbers: optional leading +, 7 to 15 digits
	PhonePattern = `^\+?[0-9]{7,15}$`

	// 24h clock, seconds optional
	ClockPattern = `^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Username *regexp.Regexp
	Phone    *regexp.Regexp
	Clock    *regexp.Regexp
}{
	Username: regexp.MustCompile(UsernamePattern),
	Phone:    regexp.MustCompile(PhonePattern),
	Clock:    regexp.MustCompile(ClockPattern),
}

// Rules maps custom binding tags to their validators
var Rules = map[string]validator.Func{
	"username": patternRule(CompiledPatterns.Username),
	"phone":    patternRule(CompiledPatterns.Phone),
	"clock":    patternRule(CompiledPatterns.Clock),
	"material_type": func(fl validator.FieldLevel) bool {
		return models.MaterialType(fl.Field().String()).Valid()
	},
	"product_category": func(fl validator.FieldLevel) bool {
		return models.ProductCategory(fl.Field().String()).Valid()
	},
	"interaction_policy": func(fl validator.FieldLevel) bool {
		return models.InteractionPolicy(fl.Field().String()).Valid()
	},
}

func patternRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	for tag, fn := range Rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

var registerOnce sync.Once

// RegisterWithGin installs the custom rules on gin's binding validator.
// Safe to call more than once.
func RegisterWithGin() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := Register(v); err != nil {
				panic(err)
			}
		}
	})
}
