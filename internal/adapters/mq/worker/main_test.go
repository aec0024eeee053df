package worker_test

import (
	"os"
	"testing"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}
