package pself

// RequiredKind maps an operating system identifier (runtime.GOOS values) to
// the one section kind loadable on that platform. The second return is false
// for unknown systems, meaning no section is compatible.
func RequiredKind(goos string) (SectionKind, bool) {
	switch goos {
	case "linux":
		return KindELF, true
	case "windows":
		return KindPE, true
	case "darwin":
		return KindMachO, true
	default:
		return 0, false
	}
}
