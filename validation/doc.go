// Package validation validates configuration structs using struct tags
// (go-playground/validator). Failures are reported as INVALID_ARGUMENT
// AppErrors with per-field details keyed by mapstructure names.
//
//	type Config struct {
//	    Name            string `mapstructure:"name" validate:"omitempty,identifier"`
//	    DuplicatePolicy string `mapstructure:"duplicate_policy" validate:"omitempty,oneof=reject replace keep"`
//	}
//	err := validation.Validate(cfg)
package validation
