// Package core turns intake options into a ResolvedConfig and runs the link
// pipeline for it.
//
// Resolution happens once, before any external process starts:
//
//  1. The options are validated (dest and id are required).
//  2. The repository address is taken from the explicit repo option or read
//     from node_modules/<id>/<manifest> under cwd.
//  3. The address is normalized to a fetchable URL and checked.
//  4. The clone directory name is taken from the dir option or derived from
//     the URL, and joined onto dest.
//
// Any resolution error aborts the run without starting the clone.
package core
