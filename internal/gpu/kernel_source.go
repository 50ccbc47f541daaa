//go:build opencl

package gpu

import _ "embed"

//go:embed kernel.cl
var kernelSource string
