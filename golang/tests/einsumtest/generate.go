// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package einsumtest contains einsum expressions generated by einsumgen
// to test the generated Go code.
package einsumtest

//go:generate go run ../../einsumgen -einsum MatMul=ij,jk->ik -einsum MatVec=ij,j->i -einsum Chain=ij,jk,kl->il -einsum Transposed=ij,jk->ki -einsum Diagonal=ii->i -einsum Trace=ii -einsum Outer=i,j->ij -einsum Bilinear=i,ij,j-> -einsum Batched=bij,bjk->bik
