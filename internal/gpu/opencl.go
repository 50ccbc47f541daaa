//go:build opencl

package gpu

/*
#cgo CFLAGS: -I${SRCDIR}/../../deps/opencl-headers
#cgo windows LDFLAGS: -L${SRCDIR}/../../deps/lib -lOpenCL
#cgo linux LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL

#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif

#include <stdlib.h>
*/
import "C"

import (
	"strings"
	"unsafe"
)

// EnumerateDevices lists every GPU device visible to every installed
// OpenCL platform, in the same global-index order --list-devices and
// --devices use.
func EnumerateDevices() ([]DeviceInfo, error) {
	var numPlatforms C.cl_uint
	if C.clGetPlatformIDs(0, nil, &numPlatforms) != C.CL_SUCCESS || numPlatforms == 0 {
		return nil, &DeviceError{Op: "enumerate platforms", Err: ErrNoPlatforms}
	}
	platforms := make([]C.cl_platform_id, numPlatforms)
	C.clGetPlatformIDs(numPlatforms, &platforms[0], nil)

	var out []DeviceInfo
	globalIdx := 0
	for platformIdx, platform := range platforms {
		platformName := clPlatformInfoString(platform, C.CL_PLATFORM_NAME)

		var numDevices C.cl_uint
		if C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, 0, nil, &numDevices) != C.CL_SUCCESS || numDevices == 0 {
			continue
		}
		devices := make([]C.cl_device_id, numDevices)
		C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, numDevices, &devices[0], nil)

		for deviceIdx, device := range devices {
			out = append(out, DeviceInfo{
				GlobalIndex:      globalIdx,
				PlatformIndex:    platformIdx,
				DeviceIndex:      deviceIdx,
				PlatformName:     platformName,
				DeviceName:       clDeviceInfoString(device, C.CL_DEVICE_NAME),
				Vendor:           clDeviceInfoString(device, C.CL_DEVICE_VENDOR),
				ComputeUnits:     uint32(clDeviceInfoUint(device, C.CL_DEVICE_MAX_COMPUTE_UNITS)),
				MaxWorkGroupSize: int(clDeviceInfoSize(device, C.CL_DEVICE_MAX_WORK_GROUP_SIZE)),
				GlobalMemSize:    clDeviceInfoUint64(device, C.CL_DEVICE_GLOBAL_MEM_SIZE),
				LocalMemSize:     clDeviceInfoUint64(device, C.CL_DEVICE_LOCAL_MEM_SIZE),
			})
			globalIdx++
		}
	}
	if len(out) == 0 {
		return nil, &DeviceError{Op: "enumerate devices", Err: ErrNoDevices}
	}
	return out, nil
}

func clPlatformInfoString(platform C.cl_platform_id, param C.cl_platform_info) string {
	var size C.size_t
	if C.clGetPlatformInfo(platform, param, 0, nil, &size) != C.CL_SUCCESS || size == 0 {
		return "Unknown"
	}
	buf := make([]byte, size)
	C.clGetPlatformInfo(platform, param, size, unsafe.Pointer(&buf[0]), nil)
	return strings.TrimRight(string(buf), "\x00")
}

func clDeviceInfoString(device C.cl_device_id, param C.cl_device_info) string {
	var size C.size_t
	if C.clGetDeviceInfo(device, param, 0, nil, &size) != C.CL_SUCCESS || size == 0 {
		return "Unknown"
	}
	buf := make([]byte, size)
	C.clGetDeviceInfo(device, param, size, unsafe.Pointer(&buf[0]), nil)
	return strings.TrimRight(string(buf), "\x00")
}

func clDeviceInfoUint(device C.cl_device_id, param C.cl_device_info) uint32 {
	var v C.cl_uint
	C.clGetDeviceInfo(device, param, C.size_t(unsafe.Sizeof(v)), unsafe.Pointer(&v), nil)
	return uint32(v)
}

func clDeviceInfoSize(device C.cl_device_id, param C.cl_device_info) uint64 {
	var v C.size_t
	C.clGetDeviceInfo(device, param, C.size_t(unsafe.Sizeof(v)), unsafe.Pointer(&v), nil)
	return uint64(v)
}

func clDeviceInfoUint64(device C.cl_device_id, param C.cl_device_info) uint64 {
	var v C.cl_ulong
	C.clGetDeviceInfo(device, param, C.size_t(unsafe.Sizeof(v)), unsafe.Pointer(&v), nil)
	return uint64(v)
}
