package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	regsyncerrors "github.com/alexisbeaulieu97/regsync/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern    = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	subjectIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("subject_id", func(fl validator.FieldLevel) bool {
			return subjectIDPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return regsyncerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(cfg.Subjects))
	for i, subject := range cfg.Subjects {
		if _, exists := seen[subject.ID]; exists {
			return regsyncerrors.NewValidationError(fieldForSubject(i, "id"), fmt.Sprintf("duplicate subject id %q", subject.ID), nil)
		}
		seen[subject.ID] = i

		if err := validateSource(i, subject.Source); err != nil {
			return err
		}
	}

	return nil
}

func validateSource(index int, src Source) error {
	hasPath := src.Path != ""
	hasGit := src.Git != nil

	switch {
	case hasPath && hasGit:
		return regsyncerrors.NewValidationError(fieldForSubject(index, "source"), "path and git are mutually exclusive", nil)
	case !hasPath && !hasGit:
		return regsyncerrors.NewValidationError(fieldForSubject(index, "source"), "either path or git is required", nil)
	}
	return nil
}

func convertValidationError(err error) error {
	if invalid, ok := err.(*validator.InvalidValidationError); ok {
		return regsyncerrors.NewValidationError("config", invalid.Error(), err)
	}

	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		first := validationErrs[0]
		field := normalizeNamespace(first.Namespace())
		message := fmt.Sprintf("failed %q validation", first.Tag())
		return regsyncerrors.NewValidationError(field, message, err)
	}

	return regsyncerrors.NewValidationError("config", err.Error(), err)
}

// normalizeNamespace rewrites validator namespaces like
// "Config.Subjects[0].ID" into the document's field naming.
func normalizeNamespace(ns string) string {
	ns = strings.TrimPrefix(ns, "Config.")
	ns = strings.ReplaceAll(ns, "Subjects[", "subjects[")
	return strings.ToLower(ns[:1]) + ns[1:]
}

func fieldForSubject(index int, field string) string {
	return fmt.Sprintf("subjects[%d].%s", index, field)
}
