package model

import "errors"

var errRequiredTestCode = errors.New("testCode is required when runTests is true")
