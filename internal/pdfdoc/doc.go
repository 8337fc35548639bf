package pdfdoc

// Package pdfdoc adapts pdfcpu to the merge pipeline: it validates single
// documents held in memory and concatenates validated documents page by page
// without transcoding their content.
