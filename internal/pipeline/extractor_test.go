package pipeline_test

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/unibuddy/lecture-api/api/v1alpha1"
	"github.com/unibuddy/lecture-api/internal/artifacts"
	"github.com/unibuddy/lecture-api/internal/pipeline"
)

var _ = Describe("file type detection", func() {
	DescribeTable("maps the extension to the content type",
		func(fileName string, expected api.FileType) {
			Expect(pipeline.DetectFileType(fileName)).To(Equal(expected))
		},
		Entry("ppt", "slides.ppt", api.FileTypePresentation),
		Entry("pptx", "slides.pptx", api.FileTypePresentation),
		Entry("uppercase pptx", "SLIDES.PPTX", api.FileTypePresentation),
		Entry("pdf", "notes.pdf", api.FileTypePdf),
		Entry("doc", "paper.doc", api.FileTypeDocument),
		Entry("docx", "paper.docx", api.FileTypeDocument),
		Entry("mp3", "lecture.mp3", api.FileTypeAudio),
		Entry("wav", "lecture.wav", api.FileTypeAudio),
		Entry("m4a", "lecture.m4a", api.FileTypeAudio),
		Entry("aac", "lecture.aac", api.FileTypeAudio),
		Entry("exe", "malware.exe", api.FileTypeOther),
		Entry("no extension", "README", api.FileTypeOther),
		Entry("image", "photo.png", api.FileTypeOther),
	)
})

var _ = Describe("artifact extractor", func() {
	var store artifacts.Store

	BeforeEach(func() {
		var err error
		store, err = artifacts.NewFilesystemStore(GinkgoT().TempDir())
		Expect(err).To(BeNil())
	})

	It("extracts text from a stored pdf artifact", func() {
		key := "lectures/calc.pdf"
		err := store.Put(context.TODO(), key, strings.NewReader("%PDF-1.4 content"), 16, "application/pdf")
		Expect(err).To(BeNil())

		extractor := pipeline.NewArtifactExtractor(store)
		text, err := extractor.Extract(context.TODO(), &api.Lecture{
			Id:       uuid.New(),
			FileType: api.FileTypePdf,
			FileName: "calc.pdf",
			FilePath: key,
		})
		Expect(err).To(BeNil())
		Expect(text).To(ContainSubstring("calc.pdf"))
	})

	It("fails fast on unsupported file types without touching the artifact store", func() {
		counting := &countingArtifactStore{Store: store}

		extractor := pipeline.NewArtifactExtractor(counting)
		_, err := extractor.Extract(context.TODO(), &api.Lecture{
			Id:       uuid.New(),
			FileType: api.FileTypeOther,
			FileName: "malware.exe",
			FilePath: "lectures/malware.exe",
		})
		Expect(err).To(BeAssignableToTypeOf(&pipeline.ErrUnsupportedFileType{}))
		Expect(counting.gets).To(Equal(0))
	})

	It("fails when the artifact is missing", func() {
		extractor := pipeline.NewArtifactExtractor(store)
		_, err := extractor.Extract(context.TODO(), &api.Lecture{
			Id:       uuid.New(),
			FileType: api.FileTypePdf,
			FileName: "ghost.pdf",
			FilePath: "lectures/ghost.pdf",
		})
		Expect(err).To(BeAssignableToTypeOf(&pipeline.ErrExtractionFailed{}))
	})
})

type countingArtifactStore struct {
	artifacts.Store
	gets int
}

func (c *countingArtifactStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}
