package main

import (
	"context"
	"os"
	"testing"

	service "github.com/athid/kallelse/internal/app"
	"github.com/athid/kallelse/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("KALLELSE_GK_CAP", "2")
			_ = os.Setenv("KALLELSE_SLOT_TARGET", "11")
			defer func() {
				_ = os.Unsetenv("KALLELSE_GK_CAP")
				_ = os.Unsetenv("KALLELSE_SLOT_TARGET")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.GKCap, convey.ShouldEqual, 2)
				convey.So(cfg.SlotTarget, convey.ShouldEqual, 11)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithInput("input.xlsx"),
					service.WithOutput("output.xlsx"),
					service.WithConfig(config.New()),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running without paths", func() {
			svc := service.New(service.WithConfig(config.New()))
			_, err := svc.Run(context.Background())

			convey.Convey("Then the run should fail fast", func() {
				convey.So(err, convey.ShouldWrap, service.ErrMissingPath)
			})
		})
	})
}
