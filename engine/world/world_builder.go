package world

// WorldBuilderOption is a function that configures a world during creation.
type WorldBuilderOption func(*world)

// WithRobot adds a robot to the world. May be supplied multiple times; robot
// indices follow the order of the options.
//
// Parameters:
//   - r: the robot to add
//
// Returns:
//   - WorldBuilderOption: the option function
func WithRobot(r Robot) WorldBuilderOption {
	return func(w *world) {
		if r != nil {
			w.robots = append(w.robots, r)
		}
	}
}
