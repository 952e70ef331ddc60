// Package dom defines the native UI tree surface the renderer drives.
//
// The renderer never talks to a platform directly. It creates nodes through a
// Document and mutates them through Element and Style. Two implementations
// ship with domrender:
//
//   - Browser (js/wasm builds only) wraps the page's document via syscall/js.
//   - memdom.New builds an in-memory tree backed by golang.org/x/net/html,
//     used for server-side previews and tests.
//
// # Listeners
//
// AddEventListener takes ListenerOptions. When Signal is set, the listener is
// detached as soon as the context is done; an implementation must not invoke a
// handler whose signal is already done, even if detachment has not yet been
// observed by the platform.
package dom
