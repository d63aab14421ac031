package tandem

// ResourceExists is a run condition that checks if a resource of type T
// exists in the world.
//
//	app.AddSystems(Update, System(drawHud).RunIf(ResourceExists[Hud]))
func ResourceExists[T any](res ResOption[T]) bool {
	return res.Value != nil
}
