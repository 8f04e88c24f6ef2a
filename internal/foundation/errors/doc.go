// Package errors provides the classified error primitives used across photofolio.
//
// Every failure that should stop a build is expressed as a ClassifiedError carrying a
// category (config, content, locale, render, ...), a severity and structured context.
// The CLI and HTTP adapters turn those errors into exit codes and responses.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryContent, "read work metadata").
//		WithContext("path", metaPath).
//		Fatal().
//		Build()
package errors
