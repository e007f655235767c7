// Package obs contains observability utilities such as logging.
package obs

import "go.uber.org/zap"

// NewLogger builds the service logger: JSON output in prod, human-readable
// console output otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
