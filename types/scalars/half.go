/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package scalars

import "github.com/x448/float16"

// Conversions from/to IEEE 754 half-precision (binary16), for ingesting seeds
// stored in half precision (e.g. model weights exported as float16). The tape
// itself always computes in T; float16 is a storage format only.

// FromFloat16 converts a half-precision value to T.
func FromFloat16[T Float](h float16.Float16) T {
	return T(h.Float32())
}

// ToFloat16 converts v to half-precision, rounding to nearest even.
func ToFloat16[T Float](v T) float16.Float16 {
	return float16.Fromfloat32(float32(v))
}

// FromFloat16Slice converts a slice of half-precision values to a newly
// allocated slice of T.
func FromFloat16Slice[T Float](hs []float16.Float16) []T {
	out := make([]T, len(hs))
	for ii, h := range hs {
		out[ii] = T(h.Float32())
	}
	return out
}
