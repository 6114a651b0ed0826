package kspl

// getProperty reads a property off a value. Instances expose their
// fields, host values whatever their Property method resolves; every
// other kind has no properties.
func (exec *Execution) getProperty(obj Value, name string, line int) (Value, error) {
	switch obj.Kind() {
	case KindInstance:
		if val, ok := obj.Instance().Fields[name]; ok {
			return val, nil
		}
	case KindHost:
		if val, ok := obj.Host().Property(name); ok {
			return val, nil
		}
	}
	return NewNull(), exec.wrap(&PropertyNotFoundError{Property: name}, line)
}

// setProperty writes a property. Instance fields are created on write,
// matching how init methods populate objects; host values decide
// writability themselves.
func (exec *Execution) setProperty(target Value, name string, val Value, line int) error {
	switch target.Kind() {
	case KindInstance:
		target.Instance().Fields[name] = val
		return nil
	case KindHost:
		if !target.Host().SetProperty(name, val) {
			return exec.wrap(&PropertyNotFoundError{Property: name}, line)
		}
		return nil
	default:
		return exec.errorAt(line, "cannot assign property '%s' on %s", name, target.Kind())
	}
}
