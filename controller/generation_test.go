package controller_test

import (
	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mppsim/controller"
	"github.com/sarchlab/mppsim/display"
	"github.com/sarchlab/mppsim/mocks"
)

var _ = Describe("Step with a mocked sink", func() {
	It("writes both the blue and red channel frames and requests exactly one refresh", func() {
		_, _, c := newController()

		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		sink := mocks.NewMockSink(mockCtrl)
		// One word per chip (256 rows x 4 chips) on each channel.
		sink.EXPECT().SetWord(display.Blue, gomock.Any(), gomock.Any(), gomock.Any()).Times(1024)
		sink.EXPECT().SetWord(display.Red, gomock.Any(), gomock.Any(), gomock.Any()).Times(1024)
		sink.EXPECT().Refresh().Times(1)

		c.Step(sink)
	})
})

var _ = Describe("Generation", func() {
	It("runs exactly MaxSteps generations on its own clock", func() {
		engine := sim.NewSerialEngine()
		_, _, c := newController()

		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()

		sink := mocks.NewMockSink(mockCtrl)
		sink.EXPECT().SetWord(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
		sink.EXPECT().Refresh().Times(3)

		gen := controller.NewGeneration("Generation", engine, 1*sim.GHz, c, sink)
		gen.MaxSteps = 3

		engine.Run()
		Expect(gen.Steps).To(Equal(3))
		Expect(gen.Done()).To(BeTrue())
	})
})
