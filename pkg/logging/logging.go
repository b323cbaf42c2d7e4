package logging

import "go.uber.org/zap"

// New returns the process logger: JSON output in production, console
// output with debug level everywhere else.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
