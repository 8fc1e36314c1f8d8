package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
)

const version = "0.5.0"

var Logger = logrus.New()

func main() {
	Logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		DisableColors: false,
		ForceQuote:    false,
	})

	root := newRootCmd(Logger)
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
