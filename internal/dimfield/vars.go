package dimfield

var (
	Debug = false // set to true for verbose debug output

	// Compile time checks to ensure the navigator capability interface is
	// implemented by the types the CLI and tests hand to the engine.
	_ Navigator = (*StaticNavigator)(nil)
)
