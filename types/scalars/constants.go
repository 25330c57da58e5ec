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

import "math"

// Typed versions of the process-wide mathematical constants. They are plain
// conversions of the [math] package constants, provided so generic code doesn't
// need to spell out the conversion at every use.

// Pi returns π for the type T.
func Pi[T Float]() T { return T(math.Pi) }

// E returns Euler's number for the type T.
func E[T Float]() T { return T(math.E) }

// Ln2 returns the natural logarithm of 2 for the type T.
func Ln2[T Float]() T { return T(math.Ln2) }

// Ln10 returns the natural logarithm of 10 for the type T.
func Ln10[T Float]() T { return T(math.Ln10) }
