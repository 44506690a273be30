package entity

import "github.com/sirupsen/logrus"

var logger = logrus.StandardLogger()

// SetLogger replaces the logger used to report rejected input.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}

func rejected(field, rule, message string) {
	logger.WithFields(logrus.Fields{"field": field, "rule": rule}).Debug(message)
}
