/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core turns docstring signatures into argument and
// return-value checkers.
//
// The pipeline: a docstring is scanned for a signature paragraph,
// which is parsed into a Sig (see ParseDoc).  Each type expression in
// the Sig becomes an NFA over named value predicates, the parameter
// list is assembled into one NFA, that NFA is determinized by subset
// construction, and the resulting DFA is walked at call time by a
// Checker.  Decorate ties the two checkers (arguments, returns)
// around a host callable.
//
// Predicates live in a Registry.  The builtin entries classify values
// the way the host environment exports them (see KindOf); callers add
// their own predicates for custom kinds.
//
// A quick example:
//
//	reg := NewRegistry()
//	c, err := CheckArgs("incr( n )\nn : number", reg)
//	// c.Check(5.0)    -> ok
//	// c.Check("five") -> incr: number expected for argument no. 1 (got string).
package core
