package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// EnvironmentSampler maps a ray direction to the background color seen along it.
// Implementations must be safe for concurrent use.
type EnvironmentSampler interface {
	Sample(direction Vec3) Vec3
}

// EnvironmentFunc adapts a plain function to EnvironmentSampler
type EnvironmentFunc func(direction Vec3) Vec3

// Sample calls f(direction)
func (f EnvironmentFunc) Sample(direction Vec3) Vec3 {
	return f(direction)
}
