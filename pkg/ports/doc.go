/*
Package ports defines the driven ports (interfaces) of the navfocus core.

These interfaces decouple focus tracking from the embedding system that owns
the navigation tree, and from whatever observes the emitted lifecycle events.

# Key Interfaces

  - Navigation: The navigation object of one navigator (state, focus query, parent).
  - Subscriber: Optional capability of a Navigation to deliver action/willFocus/willBlur.
  - Observer: Receives a record of every lifecycle event a tracker emits.
*/
package ports
