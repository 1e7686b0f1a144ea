package platform

var (
	NormalizeKernelArch = normalizeKernelArch
	NormalizeGoArch     = normalizeGoArch
)
