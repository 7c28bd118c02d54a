/*

Package rep provides types to model data structures of Heroes of the Storm
replays (*.StormReplay) decoded by the stormprot package.
These provide a higher level overview and are much easier to use.

*/
package rep
