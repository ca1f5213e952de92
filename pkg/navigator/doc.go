/*
Package navigator hosts a tree of navigators over one committed navigation state.

It plays the part of the embedding system around the focus trackers: a
Container owns the root state produced by an external reducer, mounts one
Navigator for every route that hosts nested state, and forwards each committed
change to the root tracker as an action notification. Trackers then propagate
focus down the tree through the registry of each navigator.

	c, err := navigator.NewContainer(initial, navigator.WithLogger(logger))
	if err != nil {
		return err
	}
	defer c.Close()

	c.Root().Listen("home").AddListener(domain.EventDidFocus, onHomeFocused)

	if err := c.Start(); err != nil {
		return err
	}
	err = c.Dispatch(domain.Action{Type: "Navigate"}, next)
*/
package navigator
