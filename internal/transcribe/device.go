package transcribe

import "os/exec"

// Device is the compute target used for inference.
type Device string

const (
	// DeviceAuto selects CUDA when available, CPU otherwise.
	DeviceAuto Device = ""
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// cudaAvailable probes for a usable NVIDIA GPU by running nvidia-smi. It
// never fails: a missing or broken probe just means no accelerator.
func cudaAvailable() bool {
	path, err := exec.LookPath("nvidia-smi")
	if err != nil {
		return false
	}
	return exec.Command(path, "-L").Run() == nil
}

// resolveDevice picks the device for one run. An explicit user choice is
// returned unchanged; only DeviceAuto consults the probe.
func resolveDevice(requested Device, probe func() bool) Device {
	if requested == DeviceCPU || requested == DeviceCUDA {
		return requested
	}
	if probe != nil && probe() {
		return DeviceCUDA
	}
	return DeviceCPU
}
