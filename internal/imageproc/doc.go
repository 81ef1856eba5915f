// Package imageproc turns a base64 or data-URL encoded image into the input
// tensor the classifier expects.
//
//   - decode.go: data-URL stripping, lenient base64, image decoding. Importing
//     the package registers jpeg, png, gif, bmp, webp and avif decoders.
//   - preprocess.go: stretch-resize to 224x224, RGB, [0,1] scaling and the
//     batch dimension. Layout is NHWC, shape (1,224,224,3).
package imageproc
