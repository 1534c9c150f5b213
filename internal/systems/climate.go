package systems

import (
	"math"

	"github.com/san-kum/mrsolve/internal/multirate"
)

// ClimateWeather layers fast weather fluctuations over a slow climate
// trend. State: slow [climate temperature, CO2], fast [weather
// temperature, pressure]. Time unit is one day.
type ClimateWeather struct {
	climateTimescale float64
	weatherTimescale float64
	coupling         float64
}

func NewClimateWeather() *ClimateWeather {
	return &ClimateWeather{
		climateTimescale: 3650.0,
		weatherTimescale: 7.0,
		coupling:         0.01,
	}
}

func (c *ClimateWeather) SlowDim() int { return 2 }
func (c *ClimateWeather) FastDim() int { return 2 }

func (c *ClimateWeather) SlowRHS(_ float64, ySlow, yFast multirate.State) multirate.State {
	tempClimate, co2 := ySlow[0], ySlow[1]
	tempWeather := yFast[0]

	return multirate.State{
		(co2-280.0)/(100.0*c.climateTimescale) + c.coupling*(tempWeather-tempClimate),
		2.0 / c.climateTimescale,
	}
}

func (c *ClimateWeather) FastRHS(_ float64, ySlow, yFast multirate.State) multirate.State {
	tempClimate := ySlow[0]
	tempWeather, pressure := yFast[0], yFast[1]

	return multirate.State{
		-c.weatherTimescale*(tempWeather-tempClimate) + 0.1*pressure*(2.0*math.Sin(tempWeather*0.1)-1.0),
		-0.5*c.weatherTimescale*pressure + 0.2*(tempWeather-tempClimate),
	}
}

func (c *ClimateWeather) DefaultState() multirate.State {
	return multirate.State{15.0, 380.0, 15.5, 1013.0}
}

func (c *ClimateWeather) GetParams() map[string]float64 {
	return map[string]float64{
		"climate_timescale": c.climateTimescale,
		"weather_timescale": c.weatherTimescale,
		"coupling":          c.coupling,
	}
}

func (c *ClimateWeather) SetParam(name string, value float64) {
	switch name {
	case "climate_timescale":
		c.climateTimescale = value
	case "weather_timescale":
		c.weatherTimescale = value
	case "coupling":
		c.coupling = value
	}
}
