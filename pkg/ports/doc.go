// Package ports defines the boundary contracts between the substrate
// core and its collaborators: transports delivering cross-process
// signals, stores persisting mirrored state, and loaders materializing
// substance trees from external declarations.
package ports
