// Package devices maintains the registry of capture devices. Each device is
// keyed by the exact model string its files carry in metadata; the first time
// a model is seen the registry classifies it through a Resolver, collecting a
// unique short name and a description, and persists the result. Resolution is
// then a pure catalog lookup for the rest of the device's life.
package devices
