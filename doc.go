/*
Package lightprobe builds the spatial structure used to interpolate baked
irradiance probes.

A Delaunay builder tetrahedralizes the probe positions with the Bowyer-Watson
algorithm, wraps the convex hull in a layer of outer cells so points outside
the hull can still be shaded, and precomputes per-cell matrices so a query
point's interpolation weights are cheap to evaluate:

	var d lightprobe.Delaunay
	mesh := d.Build(probes)
	cell, weights := mesh.Locate(pos, lastCell)

Degenerate input (duplicate or coplanar probes) is not rejected by Build.
It yields low quality but structurally valid output. Use Validate first
when input comes from an untrusted source.
*/
package lightprobe
