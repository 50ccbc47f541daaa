//go:build !opencl

package gpu

import "testing"

// These run only in the default (non-opencl) build; the opencl-tagged
// build exercises the real cgo path instead, which needs an installed
// ICD and is skipped via tryContext in pipeline_opencl_test.go.

func TestEnumerateDevicesWithoutOpenCLSupport(t *testing.T) {
	if _, err := EnumerateDevices(); err != ErrNoOpenCLSupport {
		t.Errorf("EnumerateDevices() err = %v, want ErrNoOpenCLSupport", err)
	}
}

func TestNewPipelineWithoutOpenCLSupport(t *testing.T) {
	var salt [32]byte
	if _, err := NewPipeline([]string{"9e"}, false, VanityConfig{}, 0, salt); err != ErrNoOpenCLSupport {
		t.Errorf("NewPipeline() err = %v, want ErrNoOpenCLSupport", err)
	}
}

func TestPipelineCloseIsNoOp(t *testing.T) {
	p := &Pipeline{}
	if err := p.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
