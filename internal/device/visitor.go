package device

// VersionVisitor answers "which version is this device?" by double dispatch.
//
// Visit hands the visitor to the device, and the device reports its own
// version back. The visitor keeps a reference to the device it is visiting
// only for the duration of the call's result; nothing accumulates.
//
// The zero value is ready to use. A VersionVisitor is not safe for
// concurrent use.
type VersionVisitor struct {
	device Device
	result Version
}

// Visit returns the version reported by d.
func (v *VersionVisitor) Visit(d Device) Version {
	v.device = d
	v.result = Version{}
	d.AcceptVersion(v)
	return v.result
}

// Last returns the most recently visited device, or nil.
func (v *VersionVisitor) Last() Device {
	return v.device
}

// report is the callback devices use from AcceptVersion.
func (v *VersionVisitor) report(ver Version) {
	v.result = ver
}

// OperationsVisitor answers "what can this device do?" by double dispatch.
//
// The zero value is ready to use. An OperationsVisitor is not safe for
// concurrent use.
type OperationsVisitor struct {
	device Device
	result []string
}

// Visit returns the operation names reported by d, in declaration order.
func (v *OperationsVisitor) Visit(d Device) []string {
	v.device = d
	v.result = nil
	d.AcceptOperations(v)
	return v.result
}

// Last returns the most recently visited device, or nil.
func (v *OperationsVisitor) Last() Device {
	return v.device
}

// report is the callback devices use from AcceptOperations.
func (v *OperationsVisitor) report(names ...string) {
	v.result = append(make([]string, 0, len(names)), names...)
}
