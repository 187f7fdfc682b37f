// Command ecsdemo wires a world, a handful of components, a view, a
// collection, the reflection registry and the plugin registry together
// to exercise the full stack end to end.
package main

import (
	"log"
	"time"

	"ecsforge/internal/core/ecs"
	"ecsforge/internal/core/ecs/components"
	"ecsforge/internal/core/ecs/query"
	"ecsforge/internal/core/plugin"
	"ecsforge/internal/core/rtti"
)

func main() {
	registerReflection()

	world := ecs.NewWorld(ecs.DefaultWorldConfig())
	positions := ecs.Storage[components.Position](world)
	velocities := ecs.Storage[components.Velocity](world)
	healths := ecs.Storage[components.Health](world)

	healths.OnCreate().Subscribe(func(e ecs.Entity) bool {
		log.Printf("entity %s spawned with health", e)
		return true
	})

	mover := world.Create()
	if err := positions.Insert(mover, components.Position{X: 0, Y: 0}); err != nil {
		log.Fatal(err)
	}
	if err := velocities.Insert(mover, components.Velocity{DX: 1, DY: 0.5}); err != nil {
		log.Fatal(err)
	}

	fighter := world.Create()
	if err := healths.Insert(fighter, components.NewHealth(100)); err != nil {
		log.Fatal(err)
	}

	moveQuery := query.NewBuilder(world, true)
	query.Include[components.Position](moveQuery)
	query.Include[components.Velocity](moveQuery)
	moving, err := query.BuildView2[components.Position, components.Velocity](moveQuery)
	if err != nil {
		log.Fatal(err)
	}
	moving.ForEach(func(e ecs.Entity, p *components.Position, v *components.Velocity) bool {
		components.Integrate(p, *v, 1.0)
		log.Printf("entity %s moved to (%.2f, %.2f)", e, p.X, p.Y)
		return true
	})

	wounded := query.NewCollection[components.Health](world, nil, nil)
	wounded.ForEach(func(e ecs.Entity, h *components.Health) bool {
		h.TakeDamage(25, time.Now())
		log.Printf("entity %s now at %d/%d health", e, h.Current, h.Max)
		return true
	})

	registry := plugin.NewRegistry()
	physics, err := registry.Load("physics")
	if err != nil {
		log.Fatal(err)
	}
	physics.OnEnable().Subscribe(func(*plugin.Plugin) bool {
		log.Println("physics plugin enabled")
		return true
	})
	if err := registry.Enable("physics"); err != nil {
		log.Fatal(err)
	}

	world.Destroy(mover)
	log.Printf("world now holds %d live entities", world.Len())
}

type tagComponent struct{ Label string }

func registerReflection() {
	rtti.Reflect[tagComponent]()
	rtti.Constructor1[tagComponent, string](func(label string) tagComponent {
		return tagComponent{Label: label}
	})
	rtti.Attribute[tagComponent]("demo")

	boxed, err := rtti.Get[tagComponent]().Construct("npc")
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("reflected construct produced %+v", boxed)
}
