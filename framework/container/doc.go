// Package container provides a Laravel-compatible IoC (Inversion of Control)
// container and Service Provider system for Go.
//
// # Overview
//
// The container manages the instantiation and lifecycle of the framework's
// services: transient bindings, singletons, pre-built instances and aliases.
// It mirrors the core API of Laravel's Illuminate\Container\Container as
// closely as Go's type system allows; because Go has no runtime constructor
// reflection, auto-wiring is replaced by explicit factory functions.
//
// # Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&providers.UploadServiceProvider{})
//  3. Boot: registry.Boot() — safe to resolve everything after this
//  4. Serve requests
//
// # Resolving
//
//	limits := container.Resolve[upload.Limits](c, "upload.limits")
//
// Resolve panics on a missing binding or a type mismatch: both are
// bootstrap bugs, and surfacing them at startup beats hiding them behind
// a nil check.
package container
