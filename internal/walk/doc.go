// Package walk implements the depth-first traversal shared by cfgpack's encoder and decoder.
//
// The traversal is iterative: a stack of frames records, for each nesting level, the values
// (encode) or kinds (decode) still to visit. The record's top level is the root frame, whose
// kinds come from the schema. Visiting an Array writes or reads its length to the integer
// pool and its element tags to the tag pool, then pushes a frame for the elements.
//
// Encode and decode visit values in exactly the same order, so every pool is written and read
// strictly sequentially.
package walk
