// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import "dx8gl/d3d8/fixedfunction"

// fixedFunctionSource generates GLSL source for s. Kept as a
// one-line indirection so resolvePipeline does not need to know
// about package fixedfunction's Generate signature directly.
func fixedFunctionSource(s *fixedfunction.State) (vs, fs string) {
	return fixedfunction.Generate(s)
}
