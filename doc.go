// Package x3ftiff converts Sigma/Foveon X3F camera raw files into
// uncompressed 16-bit RGB TIFF files that open cleanly in Photoshop.
//
// Raw demosaicing and color handling are delegated to LibRaw with a fixed
// processing recipe; this package contributes parameter selection, bit-depth
// normalization, TIFF assembly with a fixed metadata block, post-write
// verification, and a sequential batch driver around that pipeline.
package x3ftiff
