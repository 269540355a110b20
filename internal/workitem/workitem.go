// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package workitem defines the unit of work passed from the traversal
// producer to the sync worker pool through the bounded ring queue.
package workitem

// Item is a single unit of file-level work: a source path and its derived
// destination path. Ownership is exclusive and transfers producer -> queue
// -> dequeuing worker, which is responsible for letting both strings (and
// the Item itself) be garbage collected once sync has been attempted.
type Item struct {
	Src string
	Dst string
}
