package main

import (
	"github.com/sirupsen/logrus"

	"sequoiacare/cmd/bootstrap"
)

func main() {
	if err := bootstrap.NewRootCommand().Execute(); err != nil {
		logrus.Fatalf("sequoiacare: %v", err)
	}
}
