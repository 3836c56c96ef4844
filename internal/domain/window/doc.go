/*
Package window implements the desktop's window and application registry.

The registry is the single source of truth for which applications can be
launched and which windows exist. It tracks geometry, minimization and the
focused window, and notifies subscribers after every mutation.

# Focus

At most one window is focused. Focus is empty exactly when no windows
exist, and a focused id is always present in the window map. Closing the
focused window moves focus to the most recently inserted remaining window.

# Invalid targets

Commands naming an unknown window id or app never fail: they are logged at
debug level and ignored, and OpenWindow reports false.

# Notification

Mutations are applied under the registry lock. Subscribers then run
synchronously, in registration order, after the lock is released, so they
may read the registry (or unsubscribe) from inside the callback.
*/
package window
