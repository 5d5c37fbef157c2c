// Package ecs provides ECS adapters for snapsheet's event stream.
//
// The primary adapter is [NewDonburiSink], which bridges sheet events (open,
// close, height and mode changes, carousel index and map sync) into a
// [Donburi] world as typed events. Subscribe to [SheetEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sheet.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
