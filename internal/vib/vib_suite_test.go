package vib_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestVib(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Vib Suite")
}
