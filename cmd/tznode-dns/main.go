package main

import (
	"context"
	"os"

	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

func main() {
	root := newRootCmd(&app{out: os.Stdout, newClients: sessionClients})
	if err := root.ExecuteContext(context.Background()); err != nil {
		zap.L().Fatal("Failed to execute root command", zap.Error(err))
	}
	os.Exit(0)
}
