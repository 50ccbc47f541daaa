//go:build !opencl

package gpu

// Pipeline is the opaque handle to one device's OpenCL resources. The
// no-opencl build never constructs one; every method here exists only
// so callers compiled without the opencl tag still type-check.
type Pipeline struct{}

// EnumerateDevices reports ErrNoOpenCLSupport: this binary was built
// without -tags opencl. internal/orchestrator has no CPU fallback; its
// workers report NewPipeline's ErrNoOpenCLSupport as their error.
func EnumerateDevices() ([]DeviceInfo, error) {
	return nil, ErrNoOpenCLSupport
}

// NewPipeline always fails without opencl support.
func NewPipeline(patterns []string, ignoreCase bool, cfg VanityConfig, deviceIndex int, salt [32]byte) (*Pipeline, error) {
	return nil, ErrNoOpenCLSupport
}

// NewPipelineForBench always fails without opencl support.
func NewPipelineForBench(deviceIndex int) (*Pipeline, error) {
	return nil, ErrNoOpenCLSupport
}

// RunBatchWithCounter always fails without opencl support.
func (p *Pipeline) RunBatchWithCounter(counterStart uint64) ([]VanityResult, uint64, error) {
	return nil, 0, ErrNoOpenCLSupport
}

// DeviceInfo always fails without opencl support.
func (p *Pipeline) DeviceInfo() (DeviceInfo, error) {
	return DeviceInfo{}, ErrNoOpenCLSupport
}

// Close is a no-op on a nil-resource Pipeline.
func (p *Pipeline) Close() error { return nil }
