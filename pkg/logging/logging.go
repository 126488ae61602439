package logging

import "go.uber.org/zap"

// New builds the process logger. Local environments get the development
// console encoder; everything else logs production JSON.
func New(env string) (*zap.Logger, error) {
	if env == "local" || env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
