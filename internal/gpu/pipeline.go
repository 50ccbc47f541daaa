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
#include <string.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/Asylian21/erg-vanity-gpu/internal/address"
	"github.com/Asylian21/erg-vanity-gpu/internal/bip"
	"github.com/Asylian21/erg-vanity-gpu/internal/matcher"
	"github.com/Asylian21/erg-vanity-gpu/internal/vanity"
)

const wordByteWidth = 8

// Pipeline owns one device's OpenCL context, command queue, program,
// kernel, and buffers. It is allocated once and reused across batches;
// only the counter_start kernel argument changes per run.
type Pipeline struct {
	device   C.cl_device_id
	context  C.cl_context
	queue    C.cl_command_queue
	program  C.cl_program
	kernel   C.cl_kernel
	info     DeviceInfo

	bufSalt           C.cl_mem
	bufPatterns       C.cl_mem
	bufPatternOffsets C.cl_mem
	bufPatternLens    C.cl_mem
	bufWords8         C.cl_mem
	bufWordLens       C.cl_mem
	bufHits           C.cl_mem
	bufHitCount       C.cl_mem

	bank    *matcher.Bank
	network address.Network
	salt    [32]byte
	cfg     VanityConfig
}

// NewPipeline builds a vanity_search pipeline bound to a specific
// device, a validated pattern bank, and a caller-supplied salt (a fresh
// random salt per search run, generated by the orchestrator once).
func NewPipeline(patterns []string, ignoreCase bool, cfg VanityConfig, deviceIndex int, salt [32]byte) (*Pipeline, error) {
	bank, err := matcher.NewBank(patterns, ignoreCase)
	if err != nil {
		return nil, err
	}

	devices, err := EnumerateDevices()
	if err != nil {
		return nil, err
	}
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, &DeviceError{Op: "select device", Err: fmt.Errorf("device index %d out of range (found %d)", deviceIndex, len(devices))}
	}

	p, err := newPipelineForDevice(deviceIndex, devices[deviceIndex], false)
	if err != nil {
		return nil, err
	}
	p.bank = bank
	p.network = address.Mainnet
	p.salt = salt
	p.cfg = cfg

	if err := p.buildKernel("vanity_search"); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.allocateBuffers(); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.uploadStaticState(); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.bindKernelArgs(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// NewPipelineForBench builds a profiling-enabled pipeline for running
// the bench_* kernels, mirroring with_device_profiling in the Rust
// reference.
func NewPipelineForBench(deviceIndex int) (*Pipeline, error) {
	devices, err := EnumerateDevices()
	if err != nil {
		return nil, err
	}
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, &DeviceError{Op: "select device", Err: fmt.Errorf("device index %d out of range (found %d)", deviceIndex, len(devices))}
	}
	return newPipelineForDevice(deviceIndex, devices[deviceIndex], true)
}

func newPipelineForDevice(deviceIndex int, info DeviceInfo, profiling bool) (*Pipeline, error) {
	var numPlatforms C.cl_uint
	C.clGetPlatformIDs(0, nil, &numPlatforms)
	platforms := make([]C.cl_platform_id, numPlatforms)
	C.clGetPlatformIDs(numPlatforms, &platforms[0], nil)
	platform := platforms[info.PlatformIndex]

	var numDevices C.cl_uint
	C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, 0, nil, &numDevices)
	devices := make([]C.cl_device_id, numDevices)
	C.clGetDeviceIDs(platform, C.CL_DEVICE_TYPE_GPU, numDevices, &devices[0], nil)
	device := devices[info.DeviceIndex]

	var ret C.cl_int
	context := C.clCreateContext(nil, 1, &device, nil, nil, &ret)
	if ret != C.CL_SUCCESS {
		return nil, &KernelRuntimeError{Op: "clCreateContext", Status: int(ret)}
	}

	var props C.cl_command_queue_properties
	if profiling {
		props = C.CL_QUEUE_PROFILING_ENABLE
	}
	queue := C.clCreateCommandQueue(context, device, props, &ret)
	if ret != C.CL_SUCCESS {
		C.clReleaseContext(context)
		return nil, &KernelRuntimeError{Op: "clCreateCommandQueue", Status: int(ret)}
	}

	return &Pipeline{device: device, context: context, queue: queue, info: info}, nil
}

func (p *Pipeline) buildKernel(name string) error {
	src := C.CString(kernelSource)
	defer C.free(unsafe.Pointer(src))
	length := C.size_t(len(kernelSource))

	var ret C.cl_int
	p.program = C.clCreateProgramWithSource(p.context, 1, &src, &length, &ret)
	if ret != C.CL_SUCCESS {
		return &KernelRuntimeError{Op: "clCreateProgramWithSource", Status: int(ret)}
	}

	if C.clBuildProgram(p.program, 1, &p.device, nil, nil, nil) != C.CL_SUCCESS {
		var logSize C.size_t
		C.clGetProgramBuildInfo(p.program, p.device, C.CL_PROGRAM_BUILD_LOG, 0, nil, &logSize)
		buildLog := make([]byte, logSize)
		if logSize > 0 {
			C.clGetProgramBuildInfo(p.program, p.device, C.CL_PROGRAM_BUILD_LOG, logSize, unsafe.Pointer(&buildLog[0]), nil)
		}
		return &KernelCompileError{BuildLog: string(buildLog)}
	}

	kName := C.CString(name)
	defer C.free(unsafe.Pointer(kName))
	var ret2 C.cl_int
	p.kernel = C.clCreateKernel(p.program, kName, &ret2)
	if ret2 != C.CL_SUCCESS {
		return &KernelRuntimeError{Op: "clCreateKernel(" + name + ")", Status: int(ret2)}
	}
	return nil
}

func (p *Pipeline) allocateBuffers() error {
	var ret C.cl_int
	firstErr := C.cl_int(C.CL_SUCCESS)
	alloc := func(flags C.cl_mem_flags, size int) C.cl_mem {
		m := C.clCreateBuffer(p.context, flags, C.size_t(size), nil, &ret)
		if ret != C.CL_SUCCESS && firstErr == C.CL_SUCCESS {
			firstErr = ret
		}
		return m
	}

	p.bufSalt = alloc(C.CL_MEM_READ_ONLY, 32)
	p.bufPatterns = alloc(C.CL_MEM_READ_ONLY, matcher.MaxPatternData)
	p.bufPatternOffsets = alloc(C.CL_MEM_READ_ONLY, matcher.MaxPatterns*4)
	p.bufPatternLens = alloc(C.CL_MEM_READ_ONLY, matcher.MaxPatterns*4)
	p.bufWords8 = alloc(C.CL_MEM_READ_ONLY, 2048*wordByteWidth)
	p.bufWordLens = alloc(C.CL_MEM_READ_ONLY, 2048*4)
	p.bufHits = alloc(C.CL_MEM_WRITE_ONLY, MaxHits*64)
	p.bufHitCount = alloc(C.CL_MEM_READ_WRITE, 4)

	if firstErr != C.CL_SUCCESS {
		return &KernelRuntimeError{Op: "clCreateBuffer", Status: int(firstErr)}
	}
	return nil
}

func (p *Pipeline) uploadStaticState() error {
	if err := p.writeBuffer(p.bufSalt, p.salt[:]); err != nil {
		return err
	}

	patternData := make([]byte, matcher.MaxPatternData)
	copy(patternData, p.bank.Data)
	if err := p.writeBuffer(p.bufPatterns, patternData); err != nil {
		return err
	}

	offsets := make([]uint32, matcher.MaxPatterns)
	copy(offsets, p.bank.Offsets)
	if err := p.writeBuffer(p.bufPatternOffsets, uint32sToBytes(offsets)); err != nil {
		return err
	}

	lens := make([]uint32, matcher.MaxPatterns)
	copy(lens, p.bank.Lens)
	if err := p.writeBuffer(p.bufPatternLens, uint32sToBytes(lens)); err != nil {
		return err
	}

	words8 := make([]byte, 2048*wordByteWidth)
	wordLens := make([]uint32, 2048)
	for i, w := range bip.Wordlist {
		n := copy(words8[i*wordByteWidth:(i+1)*wordByteWidth], w)
		wordLens[i] = uint32(n)
	}
	if err := p.writeBuffer(p.bufWords8, words8); err != nil {
		return err
	}
	return p.writeBuffer(p.bufWordLens, uint32sToBytes(wordLens))
}

func (p *Pipeline) bindKernelArgs() error {
	setArg := func(index C.cl_uint, size C.size_t, ptr unsafe.Pointer) C.cl_int {
		return C.clSetKernelArg(p.kernel, index, size, ptr)
	}
	var counterStart C.cl_ulong
	maxHits := C.cl_uint(MaxHits)
	numPatterns := C.cl_uint(len(p.bank.Patterns))
	var ignoreCase C.cl_uint
	if p.bank.IgnoreCase {
		ignoreCase = 1
	}
	numIndices := C.cl_uint(p.cfg.NumIndicesOrDefault())

	args := []C.cl_int{
		setArg(0, C.size_t(unsafe.Sizeof(p.bufSalt)), unsafe.Pointer(&p.bufSalt)),
		setArg(1, C.size_t(unsafe.Sizeof(counterStart)), unsafe.Pointer(&counterStart)),
		setArg(2, C.size_t(unsafe.Sizeof(p.bufWords8)), unsafe.Pointer(&p.bufWords8)),
		setArg(3, C.size_t(unsafe.Sizeof(p.bufWordLens)), unsafe.Pointer(&p.bufWordLens)),
		setArg(4, C.size_t(unsafe.Sizeof(p.bufPatterns)), unsafe.Pointer(&p.bufPatterns)),
		setArg(5, C.size_t(unsafe.Sizeof(p.bufPatternOffsets)), unsafe.Pointer(&p.bufPatternOffsets)),
		setArg(6, C.size_t(unsafe.Sizeof(p.bufPatternLens)), unsafe.Pointer(&p.bufPatternLens)),
		setArg(7, C.size_t(unsafe.Sizeof(numPatterns)), unsafe.Pointer(&numPatterns)),
		setArg(8, C.size_t(unsafe.Sizeof(ignoreCase)), unsafe.Pointer(&ignoreCase)),
		setArg(9, C.size_t(unsafe.Sizeof(numIndices)), unsafe.Pointer(&numIndices)),
		setArg(10, C.size_t(unsafe.Sizeof(p.bufHits)), unsafe.Pointer(&p.bufHits)),
		setArg(11, C.size_t(unsafe.Sizeof(p.bufHitCount)), unsafe.Pointer(&p.bufHitCount)),
		setArg(12, C.size_t(unsafe.Sizeof(maxHits)), unsafe.Pointer(&maxHits)),
	}
	for _, ret := range args {
		if ret != C.CL_SUCCESS {
			return &KernelRuntimeError{Op: "clSetKernelArg", Status: int(ret)}
		}
	}
	return nil
}

func (p *Pipeline) writeBuffer(buf C.cl_mem, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	ret := C.clEnqueueWriteBuffer(p.queue, buf, C.CL_TRUE, 0, C.size_t(len(data)), unsafe.Pointer(&data[0]), 0, nil, nil)
	if ret != C.CL_SUCCESS {
		return &KernelRuntimeError{Op: "clEnqueueWriteBuffer", Status: int(ret)}
	}
	return nil
}

func (p *Pipeline) readBuffer(buf C.cl_mem, size int) ([]byte, error) {
	out := make([]byte, size)
	if size == 0 {
		return out, nil
	}
	ret := C.clEnqueueReadBuffer(p.queue, buf, C.CL_TRUE, 0, C.size_t(size), unsafe.Pointer(&out[0]), 0, nil, nil)
	if ret != C.CL_SUCCESS {
		return nil, &KernelRuntimeError{Op: "clEnqueueReadBuffer", Status: int(ret)}
	}
	return out, nil
}

// RunBatchWithCounter runs one batch starting at counterStart work
// items, reads back every reported hit, re-derives each on the host,
// and returns the hits that verify plus the number of device-side hits
// that overflowed the fixed-size hit buffer (raw_hit_count - MAX_HITS,
// or 0 when the buffer wasn't full).
func (p *Pipeline) RunBatchWithCounter(counterStart uint64) ([]VanityResult, uint64, error) {
	zero := C.cl_int(0)
	if err := p.writeBuffer(p.bufHitCount, int32ToBytes(int32(zero))); err != nil {
		return nil, 0, err
	}

	counter := C.cl_ulong(counterStart)
	if ret := C.clSetKernelArg(p.kernel, 1, C.size_t(unsafe.Sizeof(counter)), unsafe.Pointer(&counter)); ret != C.CL_SUCCESS {
		return nil, 0, &KernelRuntimeError{Op: "clSetKernelArg(counter_start)", Status: int(ret)}
	}

	batchSize := p.cfg.BatchSizeOrDefault()
	globalSize := C.size_t(batchSize)
	if ret := C.clEnqueueNDRangeKernel(p.queue, p.kernel, 1, nil, &globalSize, nil, 0, nil, nil); ret != C.CL_SUCCESS {
		return nil, 0, &KernelRuntimeError{Op: "clEnqueueNDRangeKernel", Status: int(ret)}
	}
	if ret := C.clFinish(p.queue); ret != C.CL_SUCCESS {
		return nil, 0, &KernelRuntimeError{Op: "clFinish", Status: int(ret)}
	}

	countBytes, err := p.readBuffer(p.bufHitCount, 4)
	if err != nil {
		return nil, 0, err
	}
	rawHitCount := int(bytesToInt32(countBytes))
	var dropped uint64
	hitCount := rawHitCount
	if hitCount > MaxHits {
		dropped = uint64(hitCount - MaxHits)
		hitCount = MaxHits
	}
	if hitCount <= 0 {
		return nil, dropped, nil
	}

	hitBytes, err := p.readBuffer(p.bufHits, hitCount*64)
	if err != nil {
		return nil, dropped, err
	}

	var results []VanityResult
	for i := 0; i < hitCount; i++ {
		hit := decodeGpuHit(hitBytes[i*64 : (i+1)*64])
		result, ok := p.verifyHit(hit)
		if ok {
			results = append(results, result)
		}
	}
	return results, dropped, nil
}

// verifyHit re-derives a device-reported hit's entire pipeline on the
// CPU (spec step 5: "host re-derives the entire pipeline on CPU to
// confirm"). A hit that fails to verify is dropped silently rather than
// returned, matching the Rust pipeline's "false positive, shouldn't
// happen with correct GPU code" handling.
func (p *Pipeline) verifyHit(hit GpuHit) (VanityResult, bool) {
	entropy := hit.EntropyBytes()
	candidate, err := vanity.DeriveCandidateAddress(entropy[:], p.network, hit.AddressIndex)
	if err != nil {
		return VanityResult{}, false
	}
	if p.bank.MatchIndex(candidate.Address) < 0 {
		return VanityResult{}, false
	}
	return VanityResult{
		Entropy:      entropy,
		WorkItemID:   hit.WorkItemID,
		AddressIndex: hit.AddressIndex,
		PatternIndex: hit.PatternIndex,
		Address:      candidate.Address,
		Mnemonic:     candidate.Mnemonic,
	}, true
}

// DeviceInfo returns the device this pipeline is bound to.
func (p *Pipeline) DeviceInfo() (DeviceInfo, error) {
	return p.info, nil
}

// Close releases every OpenCL resource this pipeline owns.
func (p *Pipeline) Close() error {
	release := func(mem C.cl_mem) {
		if mem != nil {
			C.clReleaseMemObject(mem)
		}
	}
	release(p.bufSalt)
	release(p.bufPatterns)
	release(p.bufPatternOffsets)
	release(p.bufPatternLens)
	release(p.bufWords8)
	release(p.bufWordLens)
	release(p.bufHits)
	release(p.bufHitCount)

	if p.kernel != nil {
		C.clReleaseKernel(p.kernel)
	}
	if p.program != nil {
		C.clReleaseProgram(p.program)
	}
	if p.queue != nil {
		C.clReleaseCommandQueue(p.queue)
	}
	if p.context != nil {
		C.clReleaseContext(p.context)
	}
	return nil
}

func uint32sToBytes(values []uint32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		out[i*4+0] = byte(v)
		out[i*4+1] = byte(v >> 8)
		out[i*4+2] = byte(v >> 16)
		out[i*4+3] = byte(v >> 24)
	}
	return out
}

func int32ToBytes(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func bytesToInt32(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}

func decodeGpuHit(b []byte) GpuHit {
	var h GpuHit
	readU32 := func(off int) uint32 {
		return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
	}
	for i := range h.EntropyWords {
		h.EntropyWords[i] = readU32(i * 4)
	}
	h.WorkItemID = readU32(32)
	h.AddressIndex = readU32(36)
	h.PatternIndex = readU32(40)
	return h
}
