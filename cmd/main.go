package main

import (
	"go-hospital-scheduling/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("Hospital scheduler failed to start")
	}

	app.Run()
}
