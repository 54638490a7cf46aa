package main

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bus8/translate"
)

func TestStartup(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	logger := log.New()
	logger.Out = output

	startup(logger)

	text := output.String()
	assert.Contains(text, "msg=bus8")
	assert.Contains(text, "language="+translate.Language().String())
}
